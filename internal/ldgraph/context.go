package ldgraph

// QueryContext is the context input graphs are flattened against: the
// document's own context with the dfc-b prefix guaranteed.
func QueryContext(docContext any) any {
	prefix := map[string]any{Prefix: DFCBusinessIRI}
	if docContext == nil {
		return prefix
	}
	if m, ok := docContext.(map[string]any); ok {
		if _, has := m[Prefix]; has {
			return docContext
		}
	}
	return appendContext(docContext, prefix)
}

// CorrelationTerms declares the correlation ids as integers and the
// reconstruction relations as identifier-valued.
func CorrelationTerms() map[string]any {
	terms := map[string]any{
		PickupShipmentID: map[string]any{
			"@id":   correlationNamespace + PickupShipmentID,
			"@type": xsdInteger,
		},
		DeliveryShipmentID: map[string]any{
			"@id":   correlationNamespace + DeliveryShipmentID,
			"@type": xsdInteger,
		},
	}
	for _, p := range idValued {
		terms[p] = map[string]any{"@type": "@id"}
	}
	return terms
}

// ExtendedContext merges CorrelationTerms into base. Object contexts are
// merged key by key; anything else becomes a context array.
func ExtendedContext(base any) any {
	terms := CorrelationTerms()

	m, ok := base.(map[string]any)
	if !ok {
		terms[Prefix] = DFCBusinessIRI
		if base == nil {
			return terms
		}
		return appendContext(base, terms)
	}

	out := make(map[string]any, len(m)+len(terms)+1)
	for k, v := range m {
		out[k] = v
	}
	if _, has := out[Prefix]; !has {
		out[Prefix] = DFCBusinessIRI
	}
	for k, v := range terms {
		out[k] = v
	}
	return out
}

func appendContext(base any, extra map[string]any) []any {
	if list, ok := base.([]any); ok {
		out := make([]any, 0, len(list)+1)
		out = append(out, list...)
		return append(out, extra)
	}
	return []any{base, extra}
}
