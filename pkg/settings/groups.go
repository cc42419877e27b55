package settings

// GroupSettings is the validated content of the global groups document.
type GroupSettings struct {
	Groups []GroupEntry `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// GroupEntry wraps one group definition under the "group" key.
type GroupEntry struct {
	Group Group `json:"group" yaml:"group"`
}

// Group classifies devices whose hostname matches Regex.
// Name and Regex are optional in the schema; entries missing either are
// skipped during group resolution rather than rejected.
type Group struct {
	Name          string `json:"name,omitempty"           yaml:"name,omitempty"`
	Regex         string `json:"regex,omitempty"          yaml:"regex,omitempty"`
	GroupPriority *int   `json:"group_priority,omitempty" jsonschema:"minimum=0" yaml:"group_priority,omitempty"`
}
