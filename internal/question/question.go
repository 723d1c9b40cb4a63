package question

// Complexity bounds for the question pool. Level 1 is introductory,
// level 3 is advanced.
const (
	MinComplexity = 1
	MaxComplexity = 3
)

// Role identifies the position a candidate is screened for.
type Role string

// The fixed set of roles the corpus is keyed by.
const (
	RoleSoftwareDeveloper  Role = "Software Developer"
	RoleFullStackDeveloper Role = "Full Stack Developer"
	RolePythonDeveloper    Role = "Python Developer"
	RoleAIMLDeveloper      Role = "AI/ML Developer"
	RoleWebDeveloper       Role = "Web Developer"
)

// Roles lists all supported roles in display order.
func Roles() []Role {
	return []Role{
		RoleSoftwareDeveloper,
		RoleFullStackDeveloper,
		RolePythonDeveloper,
		RoleAIMLDeveloper,
		RoleWebDeveloper,
	}
}

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// Question is a single corpus entry. Immutable once loaded; owned by the
// repository that served it.
type Question struct {
	ID            string
	Text          string
	Role          Role
	Complexity    int
	CorrectAnswer string
}
