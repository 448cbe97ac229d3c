package libs

// MergeForUpdate combines the current full representation of a resource with
// a caller's partial update into a complete document that is safe to send as
// a full-document PUT.
//
// Merge rules, per field category:
//   - top-level attributes: partial wins; attributes absent from the partial
//     keep their existing value,
//   - mainTerm: override-or-keep, with the override itself merged shallowly
//     onto the existing main term,
//   - terms: merged element-by-element by term identity. An incoming term
//     whose id matches an existing one shallow-overrides that element, an
//     incoming term with no match is appended, and existing terms not
//     mentioned by the partial are kept unchanged. A partial without a terms
//     array keeps the existing array verbatim.
//
// Replacing the terms array wholesale instead of matching per element would
// silently delete every sibling term on each partial edit; the per-identity
// merge is the point of this function.
//
// The top-level "id" attribute is stripped from the result: the backend
// takes the identity from the path parameter and rejects it in the body.
func MergeForUpdate(existing, partial *ResourcePayload) *ResourcePayload {
	if existing == nil {
		existing = NewPayload(nil)
	}

	if partial == nil {
		partial = NewPayload(nil)
	}

	merged := &ResourcePayload{
		Attributes: make(map[string]any, len(existing.Attributes)+len(partial.Attributes)),
	}

	for key, value := range existing.Attributes {
		merged.Attributes[key] = value
	}

	for key, value := range partial.Attributes {
		merged.Attributes[key] = value
	}

	delete(merged.Attributes, "id")

	merged.MainTerm = mergeMainTerm(existing.MainTerm, partial.MainTerm)
	merged.Terms, merged.termsSupplied = mergeTerms(existing.Terms, partial, existing.termsSupplied)

	return merged
}

func mergeMainTerm(existing, incoming *Term) *Term {
	if incoming == nil {
		return existing
	}

	if existing == nil {
		term := incoming.merged(Term{})

		return &term
	}

	term := existing.merged(*incoming)

	return &term
}

// mergeTerms merges the incoming terms array into the existing one by term
// identity, preserving existing order and appending unmatched incoming terms
// in their own order.
func mergeTerms(existing []Term, partial *ResourcePayload, existingSupplied bool) ([]Term, bool) {
	if !partial.termsSupplied && partial.Terms == nil {
		return existing, existingSupplied || existing != nil
	}

	incoming := partial.Terms

	byID := make(map[int64]int, len(incoming))

	for i, term := range incoming {
		if term.ID != 0 {
			byID[term.ID] = i
		}
	}

	result := make([]Term, 0, len(existing)+len(incoming))
	matched := make(map[int64]bool, len(incoming))

	for _, term := range existing {
		if idx, ok := byID[term.ID]; ok && term.ID != 0 {
			result = append(result, term.merged(incoming[idx]))
			matched[term.ID] = true
		} else {
			result = append(result, term)
		}
	}

	for _, term := range incoming {
		if term.ID != 0 && matched[term.ID] {
			continue
		}

		result = append(result, term)
	}

	return result, true
}
