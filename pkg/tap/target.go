package tap

import "strings"

// Prompter supplies values for connection fields that were not given
// explicitly. Prompt shows defaultValue and returns it when the user enters
// nothing; PromptPassword must read with echo disabled and never shows a
// default, since the platform does not expose the previously used password.
type Prompter interface {
	Prompt(field, defaultValue string) string
	PromptPassword(field string) string
}

// Decision is the outcome of reconciling requested connection parameters
// against the currently active session.
type Decision struct {
	Effective      ConnectionParams
	LoginRequired  bool
	TargetRequired bool
}

// Resolve computes the effective connection parameters from explicit
// overrides, falling back to the prompter seeded with the current session's
// values, and decides whether a fresh login or an org/space retarget is
// needed. It performs no I/O beyond the injected prompter, so it always
// terminates with a Decision.
//
// A non-empty password always forces a login: there is no stored password
// to compare against, so a supplied one is taken as intent to
// re-authenticate. A login resets the platform's target state, hence
// LoginRequired implies TargetRequired.
func Resolve(current, overrides ConnectionParams, prompter Prompter) Decision {
	effective := ConnectionParams{
		APIURL:   resolveField(overrides.APIURL, "CF API URL", current.APIURL, prompter),
		Username: resolveField(overrides.Username, "Username", current.Username, prompter),
		Password: overrides.Password,
		Org:      resolveField(overrides.Org, "Organization", current.Org, prompter),
		Space:    resolveField(overrides.Space, "Space", current.Space, prompter),
	}
	if effective.Password == "" {
		effective.Password = prompter.PromptPassword("Password")
	}

	loginRequired := effective.Password != "" ||
		effective.APIURL != current.APIURL ||
		effective.Username != current.Username

	targetRequired := loginRequired ||
		effective.Org != current.Org ||
		effective.Space != current.Space

	return Decision{
		Effective:      effective,
		LoginRequired:  loginRequired,
		TargetRequired: targetRequired,
	}
}

func resolveField(override, field, currentValue string, prompter Prompter) string {
	if override != "" {
		return override
	}

	return prompter.Prompt(field, currentValue)
}

// BaseDomain derives the platform's base domain from the CF API URL by
// stripping the scheme and one leading "api." label, e.g.
// "https://api.example.com" yields "example.com". URLs without the "api."
// label are returned unchanged apart from the scheme.
func BaseDomain(apiURL string) string {
	domain := strings.TrimPrefix(apiURL, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, "/")

	return strings.TrimPrefix(domain, "api.")
}
