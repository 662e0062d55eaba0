package auth

import (
	"testing"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizePost(t *testing.T) {
	tests := []struct {
		name       string
		identityID int
		ownerID    int
		wantErr    error
	}{
		{"owner may act", 1, 1, nil},
		{"other user is forbidden", 2, 1, ErrForbidden},
		{"reversed ids are forbidden", 1, 2, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &models.User{ID: tt.identityID}
			post := &models.Post{ID: 10, OwnerID: tt.ownerID}
			err := AuthorizePost(identity, post)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeUser(t *testing.T) {
	identity := &models.User{ID: 5}
	assert.NoError(t, AuthorizeUser(identity, 5))
	assert.ErrorIs(t, AuthorizeUser(identity, 6), ErrForbidden)
}
