// Package xmp reads the embedded XMP metadata packet of a PDF into a
// namespaced property store. Only the Dublin Core and PRISM namespaces
// are consumed; everything else in the packet is ignored.
package xmp

import (
	"bytes"
	"encoding/xml"
	"os"
	"strings"
)

// Namespace URIs consumed from the packet.
const (
	nsDC    = "http://purl.org/dc/elements/1.1/"
	nsPRISM = "http://prismstandard.org/namespaces/basic/2.0/"
	nsRDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

var (
	packetBegin = []byte("<?xpacket begin")
	packetEnd   = []byte("<?xpacket end")
)

// Office-suite defaults and generic account names that show up as
// titles/creators in auto-generated documents. Matching values carry no
// bibliographic signal and are discarded.
var (
	titleDenylist = []string{
		".doc", ".docx", "Print", "Microsoft Word",
		"Microsoft PowerPoint", ".dvi", ".ppt", "untitled",
	}
	creatorDenylist = []string{
		"Owner", "abc", "mri", "hp", "Administrator", "administrator",
	}
)

// Properties is the namespaced property store read from one packet.
// Dublin Core fields keep their array/scalar shapes from the schema;
// PRISM fields are scalars.
type Properties struct {
	// Dublin Core.
	Identifier  string
	Title       string
	Description string
	Subject     []string
	Creator     []string
	Publisher   []string
	Rights      []string
	Language    []string

	// PRISM.
	PrismDOI        string
	PublicationName string
	Copyright       string
	Distributor     string
	EISSN           string
	ISSN            string
	ISBN            string
}

// Empty reports whether nothing was read from the packet.
func (p Properties) Empty() bool {
	return p.Identifier == "" && p.Title == "" && p.Description == "" &&
		len(p.Subject) == 0 && len(p.Creator) == 0 && len(p.Publisher) == 0 &&
		len(p.Rights) == 0 && len(p.Language) == 0 &&
		p.PrismDOI == "" && p.PublicationName == "" && p.Copyright == "" &&
		p.Distributor == "" && p.EISSN == "" && p.ISSN == "" && p.ISBN == ""
}

// DOI resolves identifier precedence as a total function: the PRISM doi
// field wins over the generic Dublin Core identifier whenever both
// exist; absent both, the result is "".
func (p Properties) DOI() string {
	if p.PrismDOI != "" {
		return p.PrismDOI
	}

	return p.Identifier
}

// HasDOI reports whether any identifier field is present.
func (p Properties) HasDOI() bool { return p.DOI() != "" }

// PublisherName resolves publisher precedence: the Dublin Core
// publisher list wins; the PRISM publication name is the fallback.
func (p Properties) PublisherName() string {
	if len(p.Publisher) > 0 {
		return p.Publisher[0]
	}

	return p.PublicationName
}

// Scrub drops title and creator values matching the auto-generated
// placeholder denylists. The whole creator list goes when any entry
// matches, since a single office-suite account name taints the lot.
func (p *Properties) Scrub() {
	for _, word := range titleDenylist {
		if strings.Contains(p.Title, word) {
			p.Title = ""
			break
		}
	}

	for _, creator := range p.Creator {
		if creatorDenied(creator) {
			p.Creator = nil
			break
		}
	}
}

func creatorDenied(creator string) bool {
	for _, word := range creatorDenylist {
		if strings.Contains(creator, word) {
			return true
		}
	}

	return false
}

// ReadFile extracts and parses the XMP packet of the file at path. The
// boolean is false when the file cannot be read or contains no
// parseable packet; per the pipeline contract that is a degraded state,
// not an error.
func ReadFile(path string) (Properties, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Properties{}, false
	}

	packet, ok := findPacket(data)
	if !ok {
		return Properties{}, false
	}

	props, err := Parse(packet)
	if err != nil {
		return Properties{}, false
	}

	return props, true
}

// findPacket locates the first xpacket-delimited region.
func findPacket(data []byte) ([]byte, bool) {
	start := bytes.Index(data, packetBegin)
	if start == -1 {
		return nil, false
	}

	end := bytes.Index(data[start:], packetEnd)
	if end == -1 {
		return nil, false
	}

	return data[start : start+end], true
}

// Parse decodes one XMP packet. Both serialization styles are handled:
// properties as child elements of rdf:Description (with rdf:Alt/Bag/Seq
// item lists) and properties as attributes on rdf:Description itself.
func Parse(packet []byte) (Properties, error) {
	// Cut the leading processing instruction; the decoder wants markup.
	if idx := bytes.IndexByte(packet, '>'); idx != -1 && bytes.HasPrefix(packet, []byte("<?")) {
		packet = packet[idx+1:]
	}

	var props Properties

	decoder := xml.NewDecoder(bytes.NewReader(packet))
	decoder.Strict = false

	// Stack of namespace/local names down to the current element.
	var stack []elem

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			stack = append(stack, elem{t.Name.Space, t.Name.Local})

			if t.Name.Space == nsRDF && t.Name.Local == "Description" {
				for _, attr := range t.Attr {
					props.set(attr.Name.Space, attr.Name.Local, attr.Value)
				}
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			value := strings.TrimSpace(string(t))
			if value == "" {
				continue
			}

			// Either directly inside a dc:/prism: element, or inside
			// an rdf:li under one.
			if prop, ok := owningProperty(stack); ok {
				props.set(prop.space, prop.local, value)
			}
		}
	}

	if props.Empty() {
		return props, errNoProperties
	}

	return props, nil
}

var errNoProperties = xml.UnmarshalError("xmp: no dc or prism properties in packet")

// elem is one entry of the open-element stack during parsing.
type elem struct{ space, local string }

// owningProperty walks up from the current element past rdf list
// wrappers to the dc/prism property element, if any.
func owningProperty(stack []elem) (elem, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		e := stack[i]
		if e.space == nsRDF && (e.local == "li" || e.local == "Alt" || e.local == "Bag" || e.local == "Seq") {
			continue
		}

		if e.space == nsDC || e.space == nsPRISM {
			return e, true
		}

		return e, false
	}

	return elem{}, false
}

// set stores one property value by namespace and local name. Array
// properties append; scalar properties keep the first value seen.
func (p *Properties) set(space, local, value string) {
	switch space {
	case nsDC:
		switch local {
		case "identifier":
			setScalar(&p.Identifier, value)
		case "title":
			setScalar(&p.Title, value)
		case "description":
			setScalar(&p.Description, value)
		case "subject":
			p.Subject = append(p.Subject, value)
		case "creator":
			p.Creator = append(p.Creator, value)
		case "publisher":
			p.Publisher = append(p.Publisher, value)
		case "rights":
			p.Rights = append(p.Rights, value)
		case "language":
			p.Language = append(p.Language, value)
		}
	case nsPRISM:
		switch local {
		case "doi":
			setScalar(&p.PrismDOI, value)
		case "publicationName":
			setScalar(&p.PublicationName, value)
		case "copyright":
			setScalar(&p.Copyright, value)
		case "distributor":
			setScalar(&p.Distributor, value)
		case "eIssn":
			setScalar(&p.EISSN, value)
		case "issn":
			setScalar(&p.ISSN, value)
		case "isbn":
			setScalar(&p.ISBN, value)
		}
	}
}

func setScalar(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
