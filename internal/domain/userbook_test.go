package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestUserBook_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		ub      UserBook
		wantPct float64
	}{
		{"midway", UserBook{PagesRead: 150, TotalPages: 300}, 50},
		{"rounds to one decimal", UserBook{PagesRead: 1, TotalPages: 3}, 0.3},
		{"complete", UserBook{PagesRead: 420, TotalPages: 420}, 100},
		{"zero total leaves stored value", UserBook{CompletionPercentage: 42.5}, 42.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ub.Normalize()
			assert.InDelta(t, tt.wantPct, tt.ub.CompletionPercentage, 0.001)
		})
	}
}

func TestShelfRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ShelfRequest
		wantErr bool
	}{
		{"minimal valid", ShelfRequest{BookID: 1, Status: StatusReading}, false},
		{"missing status", ShelfRequest{BookID: 1}, true},
		{"unknown status", ShelfRequest{BookID: 1, Status: "paused"}, true},
		{"unknown visibility", ShelfRequest{BookID: 1, Status: StatusRead, Visibility: "friends"}, true},
		{"rating in range", ShelfRequest{BookID: 1, Status: StatusRead, Rating: intPtr(5)}, false},
		{"rating too high", ShelfRequest{BookID: 1, Status: StatusRead, Rating: intPtr(6)}, true},
		{"rating too low", ShelfRequest{BookID: 1, Status: StatusRead, Rating: intPtr(0)}, true},
		{"negative pages", ShelfRequest{BookID: 1, Status: StatusReading, PagesRead: intPtr(-1)}, true},
		{"dnf with details", ShelfRequest{BookID: 1, Status: StatusDNF, DNFPage: intPtr(80), DNFReason: strPtr("lost interest")}, false},
		{"dnf with no details", ShelfRequest{BookID: 1, Status: StatusDNF}, false},
		{"dnf page on reading status", ShelfRequest{BookID: 1, Status: StatusReading, DNFPage: intPtr(80)}, true},
		{"dnf reason on read status", ShelfRequest{BookID: 1, Status: StatusRead, DNFReason: strPtr("nope")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestShelfRequest_HasProgress(t *testing.T) {
	assert.False(t, ShelfRequest{BookID: 1, Status: StatusReading}.HasProgress())
	assert.True(t, ShelfRequest{BookID: 1, Status: StatusReading, PagesRead: intPtr(10)}.HasProgress())
	assert.True(t, ShelfRequest{BookID: 1, Status: StatusDNF, DNFReason: strPtr("dull")}.HasProgress())
	assert.True(t, ShelfRequest{BookID: 1, Status: StatusRead, Review: strPtr("great")}.HasProgress())
}

func TestImportStatus_Terminal(t *testing.T) {
	assert.False(t, ImportPending.Terminal())
	assert.False(t, ImportProcessing.Terminal())
	assert.True(t, ImportCompleted.Terminal())
	assert.True(t, ImportFailed.Terminal())
}

func TestFollowableType_Valid(t *testing.T) {
	assert.True(t, FollowUser.Valid())
	assert.True(t, FollowAuthor.Valid())
	assert.True(t, FollowBook.Valid())
	assert.False(t, FollowableType("Publisher").Valid())
}
