package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"employee": RoleEmployee,
		"Employee": RoleEmployee,
		"EMPLOYEE": RoleEmployee,
		"user":     RoleEmployee, // alias lama
		"trainer":  RoleTrainer,
		"TRAINER":  RoleTrainer,
		" admin ":  RoleAdmin,
		"Admin":    RoleAdmin,
		"manager":  "",
		"":         "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeRole(raw), "raw=%q", raw)
	}
}
