package models

// Icon identifies the glyph a client should render for a folder. The set is
// closed: anything outside the table below degrades to IconDefault rather
// than failing, so stale or unknown identifiers from older clients still
// render something sensible.
type Icon string

const (
	IconDefault   Icon = "folder"
	IconArchive   Icon = "archive"
	IconBook      Icon = "book"
	IconBriefcase Icon = "briefcase"
	IconContract  Icon = "contract"
	IconFlag      Icon = "flag"
	IconGavel     Icon = "gavel"
	IconInbox     Icon = "inbox"
	IconScale     Icon = "scale"
	IconStar      Icon = "star"
	IconTag       Icon = "tag"
)

var validIcons = map[Icon]struct{}{
	IconDefault:   {},
	IconArchive:   {},
	IconBook:      {},
	IconBriefcase: {},
	IconContract:  {},
	IconFlag:      {},
	IconGavel:     {},
	IconInbox:     {},
	IconScale:     {},
	IconStar:      {},
	IconTag:       {},
}

// ParseIcon maps an icon identifier to a known Icon, falling back to
// IconDefault for unknown or empty values.
func ParseIcon(s string) Icon {
	if _, ok := validIcons[Icon(s)]; ok {
		return Icon(s)
	}
	return IconDefault
}

// Valid reports whether the icon is a member of the known set.
func (i Icon) Valid() bool {
	_, ok := validIcons[i]
	return ok
}
