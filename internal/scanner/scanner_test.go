package scanner

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow rejoue une ligne SQL en mémoire, dans l'ordre de UserColumns
type fakeRow struct {
	vals []interface{}
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if len(dest) != len(r.vals) {
		return fmt.Errorf("expected %d scan targets, got %d", len(r.vals), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.vals[i].(string)
		case *int:
			*p = r.vals[i].(int)
		case *float64:
			*p = r.vals[i].(float64)
		case *time.Time:
			*p = r.vals[i].(time.Time)
		case *sql.NullString:
			*p = r.vals[i].(sql.NullString)
		case *pq.StringArray:
			*p = r.vals[i].(pq.StringArray)
		case *[]byte:
			*p = r.vals[i].([]byte)
		default:
			return fmt.Errorf("unsupported scan target %T at index %d", d, i)
		}
	}
	return nil
}

func TestScanUser_AllColumns(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	row := fakeRow{vals: []interface{}{
		"user-1", "alice", "alice@example.com",
		sql.NullString{String: "https://cdn/avatar.png", Valid: true},
		sql.NullString{Valid: false},
		pq.StringArray{"maths", "physique"},
		250, 2,
		[]byte(`[{"name":"Level 2","description":"Reached level 2","icon":"🏆"}]`),
		[]byte(`[{"topic":"Algebra","score":4},{"topic":"Geometry","score":5}]`),
		[]byte(`[{"title":"Révisions bac","topics":["maths"]}]`),
		2, 9, 4.5,
		now, now, now, now,
	}}

	user, err := ScanUser(row)
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "https://cdn/avatar.png", user.Avatar)
	assert.Empty(t, user.Bio)
	assert.Equal(t, []string{"maths", "physique"}, []string(user.Interests))
	assert.Equal(t, 250, user.XP)

	require.Len(t, user.Badges, 1)
	assert.Equal(t, "Level 2", user.Badges[0].Name)

	// L'historique et les plans doivent survivre au cycle lecture/écriture,
	// sinon chaque Save ultérieur les efface
	require.Len(t, user.QuizHistory, 2)
	assert.Equal(t, "Algebra", user.QuizHistory[0].Topic)
	assert.Equal(t, 5, user.QuizHistory[1].Score)

	require.Len(t, user.StudyPlans, 1)
	assert.Equal(t, "Révisions bac", user.StudyPlans[0].Title)
}

func TestScanUser_EmptyJSONColumns(t *testing.T) {
	t.Parallel()

	now := time.Now()
	row := fakeRow{vals: []interface{}{
		"user-2", "bob", "bob@example.com",
		sql.NullString{}, sql.NullString{}, pq.StringArray{},
		0, 1,
		[]byte(`[]`), []byte(`[]`), []byte(`[]`),
		0, 0, 0.0,
		now, now, now, now,
	}}

	user, err := ScanUser(row)
	require.NoError(t, err)

	assert.NotNil(t, user.Badges)
	assert.NotNil(t, user.QuizHistory)
	assert.NotNil(t, user.StudyPlans)
	assert.Empty(t, user.QuizHistory)
}

func TestUserColumns_CoversDocumentFields(t *testing.T) {
	t.Parallel()

	for _, col := range []string{"badges", "quiz_history", "study_plans"} {
		assert.Contains(t, UserColumns, col)
	}
}
