package xmp

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const elementPacket = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about=""
    xmlns:dc="http://purl.org/dc/elements/1.1/"
    xmlns:prism="http://prismstandard.org/namespaces/basic/2.0/">
   <dc:identifier>doi:10.1000/xyz123</dc:identifier>
   <dc:title><rdf:Alt><rdf:li xml:lang="x-default">Study of Things</rdf:li></rdf:Alt></dc:title>
   <dc:description><rdf:Alt><rdf:li>An abstract.</rdf:li></rdf:Alt></dc:description>
   <dc:subject><rdf:Bag><rdf:li>things</rdf:li><rdf:li>studies</rdf:li></rdf:Bag></dc:subject>
   <dc:creator><rdf:Seq><rdf:li>Bar, Q</rdf:li><rdf:li>Baz, W</rdf:li></rdf:Seq></dc:creator>
   <dc:publisher><rdf:Bag><rdf:li>Example House</rdf:li></rdf:Bag></dc:publisher>
   <dc:rights><rdf:Alt><rdf:li>CC BY 4.0</rdf:li></rdf:Alt></dc:rights>
   <dc:language><rdf:Bag><rdf:li>en</rdf:li></rdf:Bag></dc:language>
   <prism:doi>10.1000/xyz123</prism:doi>
   <prism:publicationName>Journal of Examples</prism:publicationName>
   <prism:copyright>Example House 2014</prism:copyright>
   <prism:distributor>Example Distribution</prism:distributor>
   <prism:eIssn>8765-4321</prism:eIssn>
   <prism:issn>1234-5678</prism:issn>
   <prism:isbn>978-3-16-148410-0</prism:isbn>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>`

const attributePacket = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about=""
    xmlns:dc="http://purl.org/dc/elements/1.1/"
    xmlns:prism="http://prismstandard.org/namespaces/basic/2.0/"
    dc:identifier="10.1000/attr"
    prism:publicationName="Attr Journal"/>
 </rdf:RDF>
</x:xmpmeta>`

func TestParseElementForm(t *testing.T) {
	props, err := Parse([]byte(elementPacket))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if props.Identifier != "doi:10.1000/xyz123" {
		t.Errorf("Identifier = %q", props.Identifier)
	}

	if props.Title != "Study of Things" {
		t.Errorf("Title = %q", props.Title)
	}

	if props.Description != "An abstract." {
		t.Errorf("Description = %q", props.Description)
	}

	if !reflect.DeepEqual(props.Subject, []string{"things", "studies"}) {
		t.Errorf("Subject = %v", props.Subject)
	}

	if !reflect.DeepEqual(props.Creator, []string{"Bar, Q", "Baz, W"}) {
		t.Errorf("Creator = %v", props.Creator)
	}

	if props.PrismDOI != "10.1000/xyz123" {
		t.Errorf("PrismDOI = %q", props.PrismDOI)
	}

	if props.PublicationName != "Journal of Examples" {
		t.Errorf("PublicationName = %q", props.PublicationName)
	}

	if props.EISSN != "8765-4321" || props.ISSN != "1234-5678" || props.ISBN != "978-3-16-148410-0" {
		t.Errorf("serial numbers = %q %q %q", props.EISSN, props.ISSN, props.ISBN)
	}

	if props.Copyright != "Example House 2014" || props.Distributor != "Example Distribution" {
		t.Errorf("prism extras = %q %q", props.Copyright, props.Distributor)
	}
}

func TestParseAttributeForm(t *testing.T) {
	props, err := Parse([]byte(attributePacket))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if props.Identifier != "10.1000/attr" {
		t.Errorf("Identifier = %q", props.Identifier)
	}

	if props.PublicationName != "Attr Journal" {
		t.Errorf("PublicationName = %q", props.PublicationName)
	}
}

func TestParseNoProperties(t *testing.T) {
	if _, err := Parse([]byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/"></x:xmpmeta>`)); err == nil {
		t.Error("expected error for packet without dc/prism properties")
	}
}

func TestDOIPrecedence(t *testing.T) {
	testCases := []struct {
		name     string
		props    Properties
		expected string
		has      bool
	}{
		{"prism wins", Properties{PrismDOI: "10.1/p", Identifier: "10.1/d"}, "10.1/p", true},
		{"identifier fallback", Properties{Identifier: "10.1/d"}, "10.1/d", true},
		{"both absent", Properties{Title: "t"}, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.props.DOI(); got != tc.expected {
				t.Errorf("DOI() = %q, want %q", got, tc.expected)
			}

			if got := tc.props.HasDOI(); got != tc.has {
				t.Errorf("HasDOI() = %v, want %v", got, tc.has)
			}
		})
	}
}

func TestPublisherPrecedence(t *testing.T) {
	withDC := Properties{Publisher: []string{"DC House"}, PublicationName: "Prism Journal"}
	if got := withDC.PublisherName(); got != "DC House" {
		t.Errorf("PublisherName = %q, want DC House", got)
	}

	prismOnly := Properties{PublicationName: "Prism Journal"}
	if got := prismOnly.PublisherName(); got != "Prism Journal" {
		t.Errorf("PublisherName = %q, want Prism Journal", got)
	}
}

func TestScrub(t *testing.T) {
	testCases := []struct {
		name         string
		props        Properties
		wantTitle    string
		wantCreators []string
	}{
		{
			name:         "office default title dropped",
			props:        Properties{Title: "Microsoft Word - draft3.doc", Creator: []string{"Bar, Q"}},
			wantTitle:    "",
			wantCreators: []string{"Bar, Q"},
		},
		{
			name:         "untitled dropped",
			props:        Properties{Title: "untitled"},
			wantTitle:    "",
			wantCreators: nil,
		},
		{
			name:         "generic account taints creator list",
			props:        Properties{Title: "Real Title", Creator: []string{"Bar, Q", "Administrator"}},
			wantTitle:    "Real Title",
			wantCreators: nil,
		},
		{
			name:         "clean metadata untouched",
			props:        Properties{Title: "Real Title", Creator: []string{"Bar, Q"}},
			wantTitle:    "Real Title",
			wantCreators: []string{"Bar, Q"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.props.Scrub()

			if tc.props.Title != tc.wantTitle {
				t.Errorf("Title = %q, want %q", tc.props.Title, tc.wantTitle)
			}

			if !reflect.DeepEqual(tc.props.Creator, tc.wantCreators) {
				t.Errorf("Creator = %v, want %v", tc.props.Creator, tc.wantCreators)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "doc.pdf")
	content := "%PDF-1.4 ...stream... " + elementPacket + "<?xpacket end=\"w\"?> ...rest..."

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	props, ok := ReadFile(path)
	if !ok {
		t.Fatal("expected readable packet")
	}

	if props.PrismDOI != "10.1000/xyz123" {
		t.Errorf("PrismDOI = %q", props.PrismDOI)
	}
}

func TestReadFileNoPacket(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "plain.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 no packet here"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := ReadFile(path); ok {
		t.Error("expected ok=false for file without packet")
	}

	if _, ok := ReadFile(filepath.Join(dir, "missing.pdf")); ok {
		t.Error("expected ok=false for missing file")
	}
}
