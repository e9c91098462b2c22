package resolver

import "strings"

// Service is a known media source signature.
type Service struct {
	// Name identifies the rule in logs
	Name string
	// Signatures are lowercase substrings; any hit matches the rule
	Signatures []string
	// Candidates are the process/display names tried by the window focuser
	Candidates []string
	// URIs are opened in order when no window could be focused (protocol first, web second)
	URIs []string
}

// Matches reports whether the identifier contains any of the service signatures (case-insensitive)
func (s Service) Matches(identifier string) bool {
	normalized := strings.ToLower(identifier)
	for _, sig := range s.Signatures {
		if strings.Contains(normalized, sig) {
			return true
		}
	}
	return false
}

// services is evaluated in order; precedence depends on it.
var services = []Service{
	// Browsers
	{Name: "edge", Signatures: []string{"msedge", "microsoftedge"}, Candidates: []string{"msedge"}},
	{Name: "chrome", Signatures: []string{"chrome"}, Candidates: []string{"chrome"}},
	{Name: "firefox", Signatures: []string{"firefox"}, Candidates: []string{"firefox"}},
	{Name: "brave", Signatures: []string{"brave"}, Candidates: []string{"brave"}},
	{Name: "opera", Signatures: []string{"opera"}, Candidates: []string{"opera"}},

	// Music services
	{
		Name:       "spotify",
		Signatures: []string{"spotify"},
		Candidates: []string{"spotify"},
		URIs:       []string{"spotify:", "https://open.spotify.com"},
	},
	{
		Name:       "applemusic",
		Signatures: []string{"applemusic", "music.apple"},
		Candidates: []string{"applemusic"},
		URIs:       []string{"applemusic://", "music://", "https://music.apple.com"},
	},
	{
		Name:       "amazonmusic",
		Signatures: []string{"amazonmusic", "music.amazon"},
		Candidates: []string{"amazonmusic"},
		URIs:       []string{"amazonmusic://", "https://music.amazon.com"},
	},
	{
		Name:       "youtubemusic",
		Signatures: []string{"youtubemusic", "youtube"},
		Candidates: []string{"youtubemusic", "YouTube Music"},
		URIs:       []string{"youtubemusic://", "https://music.youtube.com"},
	},
}

// fallbackOrder is the order in which URI fallbacks are matched
var fallbackOrder = []string{"spotify", "youtubemusic", "applemusic", "amazonmusic"}

// Services returns a copy of the ordered rule table
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// FallbackService returns the first service with fallback URIs that matches the identifier
func FallbackService(identifier string) (Service, bool) {
	for _, name := range fallbackOrder {
		for _, svc := range services {
			if svc.Name == name && len(svc.URIs) > 0 && svc.Matches(identifier) {
				return svc, true
			}
		}
	}
	return Service{}, false
}
