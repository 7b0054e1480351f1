package view

// Path renders a state as the client-facing location for redirect hints.
func Path(s State) string {
	switch s.Screen {
	case Login:
		return "/login"
	case Admin:
		return "/admin"
	case VideoDetail:
		return "/videos/" + s.VideoID
	}
	return "/"
}
