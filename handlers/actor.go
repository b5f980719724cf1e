package handlers

import (
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

// Actor is the resolved identity behind a public-gallery request: a
// registered client or a guest session, resolved once at the boundary and
// passed as a single value from there on.
type Actor struct {
	Client  *models.Client
	Session *models.GuestSession
}

// Ref converts the actor into the persistence-layer reference.
func (a *Actor) Ref() models.ActorRef {
	if a.Client != nil {
		return models.ClientActor(a.Client.ID)
	}
	return models.GuestActor(a.Session.ID)
}

// DisplayName returns the name captured into comment author snapshots.
func (a *Actor) DisplayName() string {
	if a.Client != nil {
		return a.Client.Name
	}
	if a.Session.GuestName != nil && *a.Session.GuestName != "" {
		return *a.Session.GuestName
	}
	return "Invité"
}

// AvatarURL returns the avatar captured into comment author snapshots.
// Guests have none.
func (a *Actor) AvatarURL() *string {
	if a.Client != nil {
		return a.Client.AvatarURL
	}
	return nil
}

// CanViewGallery decides whether the actor may read the gallery's content.
// A nil actor is an anonymous visitor, allowed only on galleries without an
// access code. Guests are tied to the single gallery their session was
// created for; clients need an access grant.
func canViewGallery(gallery *models.Gallery, actor *Actor, accessRepo repository.AccessRepository) bool {
	if !gallery.IsViewable() {
		return false
	}
	if actor == nil {
		return !gallery.RequiresAccessCode()
	}
	if actor.Session != nil {
		return actor.Session.GalleryID == gallery.ID
	}
	if actor.Client != nil {
		if !gallery.RequiresAccessCode() {
			return true
		}
		_, err := accessRepo.Get(actor.Client.ID, gallery.ID)
		return err == nil
	}
	return false
}
