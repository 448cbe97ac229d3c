package libs

import (
	"encoding/json"
)

// Term is one identity-keyed localized sub-record of a resource (a name or
// label in a specific language). Fields beyond the identity are carried
// opaquely: the backend owns the schema, including the AI metadata block, and
// merging must not drop fields it does not recognize.
type Term struct {
	// ID is the backend identity; zero means the term has not been persisted.
	ID int64

	// Fields holds every JSON field of the term except "id".
	Fields map[string]any
}

// UnmarshalJSON decodes a term from its backend object form, extracting the
// identity and keeping every other field verbatim.
func (t *Term) UnmarshalJSON(data []byte) error {
	var raw map[string]any

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	if id, ok := raw["id"].(float64); ok {
		t.ID = int64(id)
	}

	delete(raw, "id")
	t.Fields = raw

	return nil
}

// MarshalJSON encodes the term back into its backend object form.
func (t Term) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Fields)+1)

	for key, value := range t.Fields {
		out[key] = value
	}

	if t.ID != 0 {
		out["id"] = t.ID
	}

	return json.Marshal(out)
}

// Value returns the term's display value, if present.
func (t Term) Value() string {
	if value, ok := t.Fields["value"].(string); ok {
		return value
	}

	return ""
}

// merged returns a copy of t with incoming's fields shallow-overriding t's.
// The identity comes from incoming when set, else from t.
func (t Term) merged(incoming Term) Term {
	fields := make(map[string]any, len(t.Fields)+len(incoming.Fields))

	for key, value := range t.Fields {
		fields[key] = value
	}

	for key, value := range incoming.Fields {
		fields[key] = value
	}

	id := t.ID
	if incoming.ID != 0 {
		id = incoming.ID
	}

	return Term{ID: id, Fields: fields}
}

// ResourcePayload is the explicit tagged form of a resource representation:
// plain top-level attributes, the distinguished primary term, and the
// identity-keyed terms array. A nil Terms slice means the caller did not
// supply one, which is distinct from an explicitly empty array.
type ResourcePayload struct {
	MainTerm   *Term
	Terms      []Term
	Attributes map[string]any

	// termsSupplied distinguishes an absent "terms" key from "terms": [].
	termsSupplied bool
}

// UnmarshalJSON splits a resource object into attributes, main term, and terms.
func (p *ResourcePayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	p.Attributes = make(map[string]any)

	for key, value := range raw {
		switch key {
		case "mainTerm":
			var term Term
			if err := json.Unmarshal(value, &term); err != nil {
				return err
			}

			p.MainTerm = &term
		case "terms":
			var terms []Term
			if err := json.Unmarshal(value, &terms); err != nil {
				return err
			}

			p.Terms = terms
			p.termsSupplied = true

			if p.Terms == nil {
				p.Terms = []Term{}
			}
		default:
			var field any
			if err := json.Unmarshal(value, &field); err != nil {
				return err
			}

			p.Attributes[key] = field
		}
	}

	return nil
}

// MarshalJSON reassembles the backend object form.
func (p ResourcePayload) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attributes)+2)

	for key, value := range p.Attributes {
		out[key] = value
	}

	if p.MainTerm != nil {
		out["mainTerm"] = *p.MainTerm
	}

	if p.Terms != nil || p.termsSupplied {
		terms := p.Terms
		if terms == nil {
			terms = []Term{}
		}

		out["terms"] = terms
	}

	return json.Marshal(out)
}

// NewPayload builds a payload from plain attributes.
func NewPayload(attributes map[string]any) *ResourcePayload {
	if attributes == nil {
		attributes = make(map[string]any)
	}

	return &ResourcePayload{Attributes: attributes}
}
