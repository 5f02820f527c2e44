package persist

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/kv"
	"todo/internal/task"
)

func sampleTasks() []task.Task {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []task.Task{
		{ID: "b", Text: "walk dog", Completed: true, CreatedAt: created.Add(time.Minute)},
		{ID: "a", Text: "", CreatedAt: created},
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	mem := kv.NewMemory()
	a := New(mem, "", nil)
	assert.Equal(t, DefaultKey, a.Key())

	require.NoError(t, a.Save(sampleTasks()))

	res := a.Load()
	assert.Equal(t, StatusLoaded, res.Status)
	assert.False(t, res.Discarded())
	assert.Equal(t, sampleTasks(), res.Tasks)
}

func TestAdapter_WireFormat(t *testing.T) {
	mem := kv.NewMemory()
	a := New(mem, "", nil)
	require.NoError(t, a.Save(sampleTasks()[:1]))

	raw, err := mem.Get(DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"b","task":"walk dog","completed":true,"createdAt":"2024-03-01T12:01:00Z"}]`,
		string(raw))
}

func TestAdapter_LoadAbsent(t *testing.T) {
	res := New(kv.NewMemory(), "", nil).Load()

	assert.Equal(t, StatusAbsent, res.Status)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
	assert.NoError(t, res.Err)
}

func TestAdapter_LoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{not json"},
		{"object", `{"id":"a"}`},
		{"wrong field type", `[{"id":"a","completed":"yes"}]`},
		{"duplicate ids", `[{"id":"a","task":"x"},{"id":"a","task":"y"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := kv.NewMemory()
			require.NoError(t, mem.Set("Tasks", []byte(tt.blob)))

			res := New(mem, "Tasks", nil).Load()

			assert.Equal(t, StatusMalformed, res.Status)
			assert.True(t, res.Discarded())
			assert.Error(t, res.Err)
			assert.Empty(t, res.Tasks)
			assert.Equal(t, "Tasks.corrupt", res.BackupKey)

			backup, err := mem.Get("Tasks.corrupt")
			require.NoError(t, err)
			assert.Equal(t, tt.blob, string(backup))
		})
	}
}

func TestAdapter_LoadMalformed_BackupFails(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(DefaultKey, []byte("garbage")))
	mem.SetErr = errors.New("read-only")

	res := New(mem, "", nil).Load()

	assert.Equal(t, StatusMalformed, res.Status)
	assert.Empty(t, res.BackupKey)
}

func TestAdapter_LoadUnreadable(t *testing.T) {
	mem := kv.NewMemory()
	mem.GetErr = errors.New("io error")

	res := New(mem, "", nil).Load()

	assert.Equal(t, StatusUnreadable, res.Status)
	assert.True(t, res.Discarded())
	assert.EqualError(t, res.Err, "io error")
	assert.Empty(t, res.Tasks)
}

func TestAdapter_LoadNull(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(DefaultKey, []byte("null")))

	res := New(mem, "", nil).Load()

	assert.Equal(t, StatusLoaded, res.Status)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
}

func TestAdapter_SaveError(t *testing.T) {
	mem := kv.NewMemory()
	cause := errors.New("quota exceeded")
	mem.SetErr = cause

	err := New(mem, "", nil).Save(sampleTasks())

	var se *SaveError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, DefaultKey, se.Key)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save TodoData: quota exceeded", err.Error())
}

func TestEncode_Nil(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "absent", StatusAbsent.String())
	assert.Equal(t, "malformed", StatusMalformed.String())
	assert.Equal(t, "unreadable", StatusUnreadable.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
