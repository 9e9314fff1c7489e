package validate

const (
	minLen          = 3
	maxLen          = 50
	passMinLen      = 8
	fullnameMaxLen  = 100
	postTitleMaxLen = 255
)

var (
	usernameCharset = &Charset{Letters: true, Digits: true, Extra: "._-"}
	fullnameCharset = &Charset{Letters: true, Extra: "._ -/()[]~"}
	titleCharset    = &Charset{Letters: true, Digits: true, Extra: "._ -"}
)

const passwordMismatchMsg = "Password confirmation does not match"

func usernameField() Field {
	return Field{
		Name: "username", Label: "A username",
		Min: minLen, Max: maxLen,
		Charset:    usernameCharset,
		CharsetMsg: "A username can contain dots, hyphens, underscores, letters, and numbers",
	}
}

func fullnameField() Field {
	return Field{
		Name: "fullname", Label: "A full name",
		Min: minLen, Max: fullnameMaxLen, Unit: "letters",
		Charset:    fullnameCharset,
		CharsetMsg: "Not all special characters are allowed",
	}
}

func passwordFields(optional bool) []Field {
	return []Field{
		{
			Name: "password", Label: "A password",
			Min: passMinLen, Max: maxLen, Optional: optional,
			EqualTo: "password_confirm", EqualMsg: passwordMismatchMsg,
		},
		{
			Name: "password_confirm", Label: "A password",
			Min: passMinLen, Max: maxLen, Optional: optional,
			EqualTo: "password", EqualMsg: passwordMismatchMsg,
		},
	}
}

// SignupFields are the rules for creating an account.
func SignupFields() []Field {
	fields := []Field{usernameField()}
	fields = append(fields, passwordFields(false)...)
	return append(fields, fullnameField())
}

// ProfileFields are the signup rules with the password pair optional, so a
// member can update their profile without changing the password.
func ProfileFields() []Field {
	fields := []Field{usernameField()}
	fields = append(fields, passwordFields(true)...)
	return append(fields, fullnameField())
}

// PostFields are the rules for creating or updating a post.
func PostFields() []Field {
	return []Field{
		{
			Name: "title", Label: "A title",
			Min: minLen, Max: postTitleMaxLen,
			Charset:    titleCharset,
			CharsetMsg: "A title can contain spaces, dots, hyphens, underscores, letters, and numbers",
		},
		{
			Name: "body", Label: "A body",
			Min: minLen,
		},
	}
}
