package newsletter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestInsertOutcome(t *testing.T) {
	t.Parallel()

	duplicate := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error collection: newsletter_subscribers index: email_unique"}},
	}

	tests := []struct {
		name    string
		err     error
		outcome InsertOutcome
		wantErr bool
	}{
		{name: "inserted", err: nil, outcome: Inserted},
		{name: "unique index violation", err: duplicate, outcome: AlreadyExists},
		{name: "wrapped violation", err: fmt.Errorf("insert: %w", duplicate), outcome: AlreadyExists},
		{name: "duplicate reported as command error", err: mongo.CommandError{Code: 11000}, outcome: AlreadyExists},
		{name: "other write error", err: mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121}}}, wantErr: true},
		{name: "network failure", err: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome, err := insertOutcome(tt.err)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}
