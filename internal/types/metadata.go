package types

// Metadata represents opaque key-value pairs attached to a record.
// Payment method details and gateway responses travel through it untyped.
type Metadata map[string]string

// Merge returns a copy of m with the entries of other applied on top.
func (m Metadata) Merge(other Metadata) Metadata {
	merged := make(Metadata, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
