package constants

import "fmt"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Role error messages
const (
	ErrNoToken             = "No token provided"
	ErrUnauthorized        = "Unauthorized"
	ErrRequiresTeacherRole = "Requires Teacher Role"
	ErrRequiresRoleFmt     = "Requires %s Role"
)

func RoleErrorFor(roles []string) string {
	if len(roles) == 1 && roles[0] == RoleTeacher {
		return ErrRequiresTeacherRole
	}
	if len(roles) == 1 {
		return fmt.Sprintf(ErrRequiresRoleFmt, roles[0])
	}
	return "Forbidden"
}

var (
	AllRoles    = []string{RoleTeacher, RoleStudent}
	TeacherOnly = []string{RoleTeacher}
	StudentOnly = []string{RoleStudent}
)
