package engine

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/conceptmesh/concept"
	"github.com/hupe1980/conceptmesh/core"
	"github.com/hupe1980/conceptmesh/rule"
)

func TestNewAppliesDefaults(t *testing.T) {
	eng := New(func(o *Options) {
		o.Config = Config{} // everything zero
	})

	assert.Equal(t, DefaultConfig.MaxCascadeDepth, eng.config.maxCascadeDepth)
	assert.Equal(t, DefaultConfig.WorklistCapacity, eng.config.worklistCapacity)
	assert.Nil(t, eng.sem)
}

func TestRegisterConceptReplacesByName(t *testing.T) {
	eng := New()

	eng.RegisterConcept(newProbe("Counter"))
	replacement := newProbe("Counter")
	eng.RegisterConcept(replacement)

	got, ok := eng.Concept("Counter")
	require.True(t, ok)
	assert.Same(t, core.Concept(replacement), got)
}

func TestRegisterRuleRejectsInvalid(t *testing.T) {
	eng := New()

	err := eng.RegisterRule(&core.SyncRule{Name: "incomplete"})
	assert.Error(t, err)
	assert.Empty(t, eng.Rules())
}

func TestMatchingRulesIndexedByTriggerRef(t *testing.T) {
	eng := New()

	r := rule.New("OnLogin").
		When(core.NewActionRef("User", "login"), nil, nil).
		Then(core.NewActionRef("Session", "create"), nil, nil).
		MustBuild()
	require.NoError(t, eng.RegisterRule(r))

	assert.Len(t, eng.matchingRules(core.NewActionRef("User", "login")), 1)
	assert.Empty(t, eng.matchingRules(core.NewActionRef("Session", "create")))
}

func TestEngineQuery(t *testing.T) {
	eng := New()
	eng.RegisterConcept(concept.NewFunc("Session").
		WithQuery("active", func(_ context.Context, _ core.Record) ([]core.Record, error) {
			return []core.Record{{"session": "s-1"}}, nil
		}))

	rows, err := eng.Query(context.Background(),
		core.NewActionRef("Session", "active"), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s-1", rows[0]["session"])
}

func TestDispatchRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eng := New(func(o *Options) { o.Registerer = reg })
	eng.RegisterConcept(newProbe("User"))
	eng.RegisterConcept(newProbe("Session"))

	require.NoError(t, eng.RegisterRule(rule.New("OnLogin").
		When(core.NewActionRef("User", "login"), nil, nil).
		Then(core.NewActionRef("Session", "create"), nil, nil).
		MustBuild()))

	_, err := eng.Dispatch(context.Background(),
		core.NewActionRef("User", "login"), nil, "")
	require.NoError(t, err)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(eng.metrics.completions.WithLabelValues("User", "login")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(eng.metrics.completions.WithLabelValues("Session", "create")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(eng.metrics.ruleFires.WithLabelValues("OnLogin")))
	assert.Equal(t, float64(0),
		testutil.ToFloat64(eng.metrics.dispatchErrors))
}

func TestEngineQueryUnknownConcept(t *testing.T) {
	eng := New()

	_, err := eng.Query(context.Background(),
		core.NewActionRef("Ghost", "anything"), nil)
	assert.ErrorIs(t, err, ErrUnknownConcept)
}
