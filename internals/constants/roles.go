package constants

import (
	"fmt"
	"strings"
)

// Role user di sistem training. Satu-satunya tempat string role
// didefinisikan; di luar boundary auth jangan bandingkan string mentah.
const (
	RoleEmployee = "Employee"
	RoleTrainer  = "Trainer"
	RoleAdmin    = "Admin"
)

var TrainerRoles = []string{RoleTrainer, RoleAdmin}

// NormalizeRole menerima casing apa pun ("trainer", "TRAINER") dan
// mengembalikan bentuk kanonik. String tak dikenal → "".
func NormalizeRole(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "employee", "user":
		return RoleEmployee
	case "trainer":
		return RoleTrainer
	case "admin":
		return RoleAdmin
	default:
		return ""
	}
}

// Template pesan error role
const ErrOnlyTrainersCanAccess = "Only trainers or admins can access %s"

func RoleErrorTrainer(feature string) string {
	return fmt.Sprintf(ErrOnlyTrainersCanAccess, feature)
}
