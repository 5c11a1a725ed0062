package entities

// MembershipStatus is a chat member status as reported by the platform
type MembershipStatus string

const (
	MembershipCreator       MembershipStatus = "creator"
	MembershipAdministrator MembershipStatus = "administrator"
	MembershipMember        MembershipStatus = "member"
	MembershipRestricted    MembershipStatus = "restricted"
	MembershipLeft          MembershipStatus = "left"
	MembershipKicked        MembershipStatus = "kicked"
)

// HasLeft reports whether the status denies access to a gated channel
func (s MembershipStatus) HasLeft() bool {
	return s == MembershipLeft || s == MembershipKicked
}
