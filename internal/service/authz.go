package service

// authorizeOwner is the ownership guard applied to update and delete
// operations.  A missing caller identity maps to ErrUnauthenticated, a
// resolved identity that is not the record's owner to ErrForbidden.
// Identities are the lower-cased emails assigned at registration, so plain
// string equality is the whole comparison.
func authorizeOwner(ownerEmail, callerEmail string) error {
	if callerEmail == "" {
		return ErrUnauthenticated
	}
	if callerEmail != ownerEmail {
		return ErrForbidden
	}
	return nil
}
