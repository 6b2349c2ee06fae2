package config

import "fmt"

// CheckGreetingTemplate reports whether template holds exactly one %s verb.
// %% is a literal percent; any other verb or a trailing % is rejected.
func CheckGreetingTemplate(template string) error {
	verbs := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 >= len(template) {
			return fmt.Errorf("trailing %%")
		}
		i++
		switch template[i] {
		case '%':
		case 's':
			verbs++
		default:
			return fmt.Errorf("unsupported verb %%%c", template[i])
		}
	}
	if verbs != 1 {
		return fmt.Errorf("expected exactly one %%s, found %d", verbs)
	}
	return nil
}
