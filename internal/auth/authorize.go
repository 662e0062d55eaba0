package auth

import "github.com/Dan9191/blog-service/internal/models"

// AuthorizePost permits an action on the post only for its owner. This
// is the single authorization rule in the system; there are no roles.
func AuthorizePost(identity *models.User, post *models.Post) error {
	if post.OwnerID != identity.ID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeUser permits an action on a user record only for that user.
func AuthorizeUser(identity *models.User, userID int) error {
	if userID != identity.ID {
		return ErrForbidden
	}
	return nil
}
