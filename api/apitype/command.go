package apitype

// Command is the payload published to a topic. Throttled commands are sent
// at a high rate (frame changes, scale changes) and are not traced one by one.
type Command interface {
	IsThrottled() bool
}

type Throttled struct {
}

type NotThrottled struct {
}

func (s *Throttled) IsThrottled() bool {
	return true
}

func (s *NotThrottled) IsThrottled() bool {
	return false
}
