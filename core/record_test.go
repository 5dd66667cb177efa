package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessRecordShape(t *testing.T) {
	rec := SuccessRecord(Record{"session": "s-1"})

	assert.Equal(t, StatusSuccess, rec[StatusField])
	assert.Equal(t, "s-1", rec["session"])
	assert.False(t, rec.Has(ErrorField))
}

func TestErrorRecordShape(t *testing.T) {
	rec := ErrorRecord("invalid credentials")

	assert.Equal(t, StatusError, rec[StatusField])
	assert.Equal(t, "invalid credentials", rec[ErrorField])
}

func TestRecordCloneNil(t *testing.T) {
	var r Record
	clone := r.Clone()

	assert.NotNil(t, clone)
	assert.Empty(t, clone)
}

func TestRecordCloneIndependent(t *testing.T) {
	orig := Record{"user": "alice"}
	clone := orig.Clone()
	clone["user"] = "bob"

	assert.Equal(t, "alice", orig["user"])
}
