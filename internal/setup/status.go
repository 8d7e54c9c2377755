package setup

import (
	"errors"
	"os"

	"github.com/petasbytes/letter-blog/internal/configfile"
	"github.com/petasbytes/letter-blog/internal/credential"
)

// State is what a tier holds.
type State string

const (
	StatePresent State = "present"
	StateEmpty   State = "empty"
	StateAbsent  State = "absent"
	StateInvalid State = "invalid"
)

// TierStatus describes one tier. Masked is only set for StatePresent.
type TierStatus struct {
	Tier   credential.Tier
	Origin string
	State  State
	Masked string
}

// Mask returns "..." followed by the last four characters of v. Values of four
// characters or fewer are not revealed at all.
func Mask(v string) string {
	r := []rune(v)
	if len(r) <= 4 {
		return "..."
	}
	return "..." + string(r[len(r)-4:])
}

// Status inspects every tier, in precedence order.
func (m *Manager) Status() []TierStatus {
	lookup := m.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	env := TierStatus{Tier: credential.TierEnvironment, Origin: m.Creds.EnvVar, State: StateAbsent}
	if v, ok := lookup(m.Creds.EnvVar); ok {
		if v == "" {
			env.State = StateEmpty
		} else {
			env.State = StatePresent
			env.Masked = Mask(v)
		}
	}

	return []TierStatus{
		env,
		fileStatus(credential.TierProject, m.Creds.ProjectConfig),
		fileStatus(credential.TierGlobal, m.Creds.GlobalConfig),
	}
}

func fileStatus(tier credential.Tier, path string) TierStatus {
	st := TierStatus{Tier: tier, Origin: path}
	doc, err := configfile.Read(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		st.State = StateAbsent
	case err != nil:
		st.State = StateInvalid
	default:
		v, _ := doc.String(configfile.APIKeyField)
		if v == "" {
			st.State = StateEmpty
		} else {
			st.State = StatePresent
			st.Masked = Mask(v)
		}
	}
	return st
}

// PrintStatus writes the status report to the console.
func (m *Manager) PrintStatus() {
	c := m.Console
	c.Printf("\nAPI Key Configuration Status\n\n")
	for _, st := range m.Status() {
		label := tierLabel(st.Tier)
		switch {
		case st.Tier == credential.TierEnvironment && st.State == StatePresent:
			c.Info("  [ok] %s: %s is set (ends with %s)\n", label, st.Origin, st.Masked)
		case st.Tier == credential.TierEnvironment && st.State == StateEmpty:
			c.Warn("  [!!] %s: %s is set but empty\n", label, st.Origin)
		case st.Tier == credential.TierEnvironment:
			c.Printf("  [--] %s: %s not set\n", label, st.Origin)
		case st.State == StatePresent:
			c.Info("  [ok] %s: %s (ends with %s)\n", label, st.Origin, st.Masked)
		case st.State == StateEmpty:
			c.Warn("  [!!] %s: %s exists but no API key\n", label, st.Origin)
		case st.State == StateInvalid:
			c.Warn("  [!!] %s: %s exists but is invalid\n", label, st.Origin)
		default:
			c.Printf("  [--] %s: %s not found\n", label, st.Origin)
		}
	}
	c.Printf("\n  Priority: Environment > Project > Global\n\n")
}

func tierLabel(t credential.Tier) string {
	switch t {
	case credential.TierEnvironment:
		return "Environment"
	case credential.TierProject:
		return "Project"
	default:
		return "Global"
	}
}
