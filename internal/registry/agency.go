package registry

import (
	"context"
	"fmt"
)

type agencyEnvelope struct {
	Status  string `json:"status"`
	Message struct {
		Agency struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"agency"`
	} `json:"message"`
}

// ResolveAgency asks the registration-agency endpoint which registrar
// issued the DOI. Any failure yields AgencyUnknown together with the
// classified error; callers treat Unknown as "skip this candidate".
func (c *Client) ResolveAgency(ctx context.Context, doi string) (Agency, error) {
	const op = "registry.agency"

	body, err := c.get(ctx, op, fmt.Sprintf("%s/works/%s/agency", c.apiBase, escapeDOI(doi)))
	if err != nil {
		return AgencyUnknown, err
	}

	var envelope agencyEnvelope
	if err := decode(op, body, &envelope); err != nil {
		return AgencyUnknown, err
	}

	if envelope.Status != "ok" {
		return AgencyUnknown, newError(op, KindNotFound, fmt.Errorf("status %q", envelope.Status))
	}

	switch envelope.Message.Agency.ID {
	case "crossref":
		return AgencyCrossref, nil
	case "datacite":
		return AgencyDataCite, nil
	default:
		return AgencyUnknown, nil
	}
}
