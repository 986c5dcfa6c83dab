package setup

import "slices"

// AgentEnv describes an agent coding environment gemini-mcp can be registered in.
type AgentEnv interface {
	// Name returns the short identifier used in CLI commands (e.g., "claude").
	Name() string

	// DisplayName returns the human-readable name (e.g., "Claude Code").
	DisplayName() string

	// Detect checks whether the server is registered at either scope.
	// Returns the settings path, scope ("project"/"global"), and whether installed.
	Detect() (path, scope string, installed bool)

	// Install registers the server. If project is true, the project-local
	// settings are edited; otherwise the global ones.
	Install(project bool, entry ServerEntry) (path string, err error)

	// Remove unregisters the server from the settings of the given scope.
	Remove(project bool) error

	// Check returns the settings path and registration state for a scope.
	Check(project bool) (path, scope string, installed bool, err error)
}

// registry holds all known agent environments, keyed by name.
var registry = map[string]AgentEnv{}

// RegisterAgentEnv registers an agent environment implementation.
func RegisterAgentEnv(env AgentEnv) {
	registry[env.Name()] = env
}

// GetAgentEnv returns a registered agent environment by name, or nil if not found.
func GetAgentEnv(name string) AgentEnv {
	return registry[name]
}

// AgentEnvNames returns the names of all registered environments, sorted.
func AgentEnvNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AllAgentEnvs returns all registered agent environments in a stable order.
func AllAgentEnvs() []AgentEnv {
	// Claude first, then everything else by name.
	order := []string{"claude"}
	var result []AgentEnv
	for _, name := range order {
		if env, ok := registry[name]; ok {
			result = append(result, env)
		}
	}
	for _, name := range AgentEnvNames() {
		if !slices.Contains(order, name) {
			result = append(result, registry[name])
		}
	}
	return result
}

// DetectedAgentEnvs returns agent environments that have the server registered.
func DetectedAgentEnvs() []AgentEnv {
	var detected []AgentEnv
	for _, env := range AllAgentEnvs() {
		if _, _, installed := env.Detect(); installed {
			detected = append(detected, env)
		}
	}
	return detected
}
