package queue

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// IDColumn is the primary key column inserted by FromColumns.
const IDColumn = "Id"

// DefaultColumns are the columns of the default blueprint.
var DefaultColumns = []string{"Id", "Task", "Assignee", "Status", "Priority", "Archived"}

var (
	priorityVariant  = []string{"High", "Medium", "Low"}
	statusVariant    = []string{"Not Started", "In Progress", "Done"}
	devStatusVariant = []string{"Not Started", "In Progress", "Done", "Dependant", "Backlog", "Cancelled"}
	areaVariant      = []string{"Architecture", "Feature", "Bug Queue", "Design", "Management", "Testing", "Release"}
	priorityColours  = "high=RED|medium=YELLOW|low=BLUE"
	statusColours    = "not started=GREY|in progress=YELLOW|done=GREEN"
	devStatusColours = statusColours + "|Dependant=MAGENTA|Backlog=CYAN|Cancelled=BLUE"
	bugColours       = "BUG:*=RED"
)

// Blueprint builds a fresh, empty collection.
type Blueprint func() *Collection

// blueprints is the registry of named starting schemas.
var blueprints = map[string]Blueprint{
	"default":     Default,
	"todo":        Todo,
	"development": Development,
	"sprint":      Sprint,
	"projects":    Projects,
}

// BlueprintNames returns the registered blueprint names, sorted.
func BlueprintNames() []string {
	names := make([]string, 0, len(blueprints))
	for name := range blueprints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFromBlueprint builds the named blueprint.
func NewFromBlueprint(name string) (*Collection, error) {
	bp, ok := blueprints[fold(name)]
	if !ok {
		return nil, fmt.Errorf("unknown blueprint '%s' (must be one of %v)", name, BlueprintNames())
	}
	return bp(), nil
}

// idRule is the primary key rule shared by every blueprint.
func idRule(name string) *Rule {
	return &Rule{Name: name, Type: Int, Role: RolePrimaryKey, Colours: parseColours("*=BLUE")}
}

func archivedRule(hide bool) *Rule {
	return &Rule{
		Name:    "Archived",
		Type:    Bool,
		Role:    RoleArchiving,
		Default: "False",
		Colours: parseColours("*=RED"),
		Hide:    hide,
	}
}

func descriptionRule(name, colours string) *Rule {
	return &Rule{Name: name, Role: RoleDescription, Colours: parseColours(colours)}
}

func variantRule(name string, variant []string, def, colours string) *Rule {
	return &Rule{
		Name:     name,
		Variant:  append([]string(nil), variant...),
		Default:  def,
		Colours:  parseColours(colours),
		Autofill: true,
	}
}

func statusRule(variant []string, colours string) *Rule {
	r := variantRule("Status", variant, "Not Started", colours)
	r.Role = RoleStatus
	return r
}

// Default is the general purpose task queue.
func Default() *Collection {
	return New(DefaultColumns,
		idRule("Id"),
		descriptionRule("Task", ""),
		archivedRule(false),
		variantRule("Priority", priorityVariant, "Low", priorityColours),
		statusRule(statusVariant, statusColours),
	)
}

// Todo is a checklist: a description and a done flag.
func Todo() *Collection {
	done := variantRule("Done", []string{"True", "False"}, "False", "False=GREY|True=GREEN")
	done.Type = Bool
	done.Role = RoleStatus

	return New([]string{"Id", "Task", "Done", "Archived"},
		idRule("Id"),
		descriptionRule("Task", ""),
		done,
		archivedRule(true),
	)
}

// Development tracks software work by complexity and area.
func Development() *Collection {
	return New([]string{"Id", "Task", "Status", "Archived", "Complexity", "Area"},
		idRule("Id"),
		descriptionRule("Task", bugColours),
		variantRule("Complexity", priorityVariant, "Low", priorityColours),
		statusRule(devStatusVariant, devStatusColours),
		variantRule("Area", areaVariant, "", priorityColours),
		archivedRule(true),
	)
}

// Sprint plans work in half-month sprints of the current year.
func Sprint() *Collection {
	var sprints []string
	for m := time.January; m <= time.December; m++ {
		sprints = append(sprints, "H1 "+m.String(), "H2 "+m.String())
	}

	return New([]string{"Id", "Task", "Status", "Priority", "Area", "Sprint", "Year", "Archived"},
		idRule("Id"),
		descriptionRule("Task", bugColours),
		statusRule(devStatusVariant, devStatusColours),
		variantRule("Priority", priorityVariant, "Low", priorityColours),
		variantRule("Area", areaVariant, "", ""),
		variantRule("Sprint", sprints, "", ""),
		&Rule{Name: "Year", Default: strconv.Itoa(time.Now().Year())},
		archivedRule(true),
	)
}

// Projects keeps one row of notes per project.
func Projects() *Collection {
	return New([]string{"Id", "Project", "Notes", "Archived"},
		idRule("Id"),
		descriptionRule("Project", ""),
		EmptyRule("Notes"),
		archivedRule(true),
	)
}

// FromColumns builds a collection from user-named columns. Every column gets
// an empty rule. If no column is named Id (ignoring case) one is inserted
// first and flagged AutoHeader; either way the Id column becomes the primary key.
func FromColumns(columns []string) (*Collection, error) {
	c := New(nil)
	for _, col := range columns {
		if err := c.AddColumn(col); err != nil {
			return nil, err
		}
	}

	id, ok := c.ResolveColumn(IDColumn)
	auto := !ok
	if auto {
		id = IDColumn
		c.Columns = append([]string{id}, c.Columns...)
	}

	rule := idRule(id)
	rule.AutoHeader = auto
	c.Schema[id] = rule
	return c, nil
}
