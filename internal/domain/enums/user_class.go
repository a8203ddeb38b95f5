package enums

type UserClass string

const (
	UserClassCreator        UserClass = "creator"
	UserClassActiveAdopter  UserClass = "active_adopter"
	UserClassPassiveAdopter UserClass = "passive_adopter"
	UserClassReported       UserClass = "reported"
	UserClassReporter       UserClass = "reporter"
)
