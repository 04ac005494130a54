package reminder

import "errors"

var ErrParseNotificationMethod = errors.New("invalid notification method")

type NotificationMethod struct {
	v string
}

func (m NotificationMethod) String() string {
	return m.v
}

func ParseNotificationMethod(value string) (NotificationMethod, error) {
	switch value {
	case "email":
		return MethodEmail, nil
	case "internal":
		return MethodInternal, nil
	case "push":
		return MethodPush, nil
	default:
		return MethodUnknown, ErrParseNotificationMethod
	}
}

var (
	MethodUnknown  = NotificationMethod{}
	MethodEmail    = NotificationMethod{v: "email"}
	MethodInternal = NotificationMethod{v: "internal"}
	MethodPush     = NotificationMethod{v: "push"}
)
