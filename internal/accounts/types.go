package accounts

type User struct {
	Name  string `json:"name"`
	UID   int    `json:"uid"`
	GID   int    `json:"gid"`
	Gecos string `json:"gecos,omitempty"`
	Home  string `json:"home"`
	// Shell is empty for the System directory; os/user does not report it.
	Shell string `json:"shell,omitempty"`
}

type Group struct {
	Name    string   `json:"name"`
	GID     int      `json:"gid"`
	Members []string `json:"members"`
}

// Directory resolves accounts at call time.
type Directory interface {
	LookupUser(name string) (User, error)
	LookupUserID(uid int) (User, error)
	LookupGroup(name string) (Group, error)
	LookupGroupID(gid int) (Group, error)
	// GroupIDs returns the groups u belongs to: its primary group first,
	// then every group listing u as a member, in database order.
	GroupIDs(u User) ([]int, error)
}
