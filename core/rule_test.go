package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncRuleValidate(t *testing.T) {
	valid := SyncRule{
		Name: "OnLogin",
		When: []ActionPattern{{Ref: NewActionRef("User", "login")}},
		Then: []ActionPattern{{Ref: NewActionRef("Session", "create")}},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		rule SyncRule
	}{
		{"missing name", SyncRule{
			When: valid.When,
			Then: valid.Then,
		}},
		{"no when patterns", SyncRule{
			Name: "r",
			Then: valid.Then,
		}},
		{"no then actions", SyncRule{
			Name: "r",
			When: valid.When,
		}},
		{"incomplete when ref", SyncRule{
			Name: "r",
			When: []ActionPattern{{Ref: ActionRef{Concept: "User"}}},
			Then: valid.Then,
		}},
		{"incomplete then ref", SyncRule{
			Name: "r",
			When: valid.When,
			Then: []ActionPattern{{Ref: ActionRef{Action: "create"}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.rule.Validate())
		})
	}
}

func TestSyncRuleTriggerRefsDeduplicates(t *testing.T) {
	login := NewActionRef("User", "login")
	create := NewActionRef("Session", "create")

	rule := SyncRule{
		Name: "r",
		When: []ActionPattern{
			{Ref: login, Input: Pattern{"username": V("u")}},
			{Ref: create},
			{Ref: login, Output: Pattern{"status": Lit(StatusSuccess)}},
		},
		Then: []ActionPattern{{Ref: NewActionRef("Log", "write")}},
	}

	assert.Equal(t, []ActionRef{login, create}, rule.TriggerRefs())
}

func TestActionRefString(t *testing.T) {
	assert.Equal(t, "User.login", NewActionRef("User", "login").String())
}

func TestPatternVars(t *testing.T) {
	p := Pattern{
		"user":    V("u"),
		"session": V("s"),
		"again":   V("u"),
		"kind":    Lit("login"),
	}

	vars := p.Vars()
	assert.Len(t, vars, 2)
	assert.Contains(t, vars, "u")
	assert.Contains(t, vars, "s")
}
