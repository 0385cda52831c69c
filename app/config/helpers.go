package config

const defaultMaxItems = 100

// IsEnabled treats a missing enabled flag as true
func (s *FeedSettings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// GetMaxItems returns the item limit, falling back to the default
func (s *FeedSettings) GetMaxItems() int {
	if s.MaxItems <= 0 {
		return defaultMaxItems
	}
	return s.MaxItems
}
