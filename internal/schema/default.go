package schema

import "github.com/muonworks/muontickets/internal/ticket"

// Default returns the built-in ticket schema, already compiled. Projects
// can override it with .mt/schema.yaml.
func Default() Schema {
	s := Schema{
		Required: []string{"id", "title", "status", "priority", "type", "created", "updated"},
		Properties: map[string]Rule{
			"id":         {Pattern: ticket.IDPattern.String()},
			"title":      {Type: "string", MinLength: 1},
			"status":     {Enum: statusValues()},
			"priority":   {Enum: priorityValues()},
			"type":       {Enum: typeValues()},
			"effort":     {Enum: effortValues()},
			"labels":     {Type: "array"},
			"tags":       {Type: "array"},
			"depends_on": {Type: "array"},
			"created":    {Pattern: ticket.DatePattern.String()},
			"updated":    {Pattern: ticket.DatePattern.String()},
			"owner": {OneOf: []Rule{
				{Type: "string", MinLength: 1},
				{Type: "null"},
			}},
			"branch": {OneOf: []Rule{
				{Type: "string", MinLength: 1},
				{Type: "null"},
			}},
			"score": {Type: "number"},
		},
	}
	if err := s.Compile(); err != nil {
		// Built-in patterns are static; a compile failure is a programming error.
		panic(err)
	}
	return s
}

func statusValues() []string {
	out := make([]string, len(ticket.Statuses))
	for i, s := range ticket.Statuses {
		out[i] = string(s)
	}
	return out
}

func priorityValues() []string {
	out := make([]string, len(ticket.Priorities))
	for i, p := range ticket.Priorities {
		out[i] = string(p)
	}
	return out
}

func typeValues() []string {
	out := make([]string, len(ticket.Types))
	for i, t := range ticket.Types {
		out[i] = string(t)
	}
	return out
}

func effortValues() []string {
	out := make([]string, len(ticket.Efforts))
	for i, e := range ticket.Efforts {
		out[i] = string(e)
	}
	return out
}
