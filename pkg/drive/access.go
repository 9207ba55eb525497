package drive

// requireOwner is the single ownership guard shared by all services. Every
// mutation goes through it rather than re-checking inline.
func requireOwner(ownerID, actorID string) error {
	if ownerID != actorID {
		return ErrAccessDenied
	}
	return nil
}
