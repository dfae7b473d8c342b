package x

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}

// MustMarshal will succeed or panic
func MustMarshal(obj interface{ Marshal() ([]byte, error) }) []byte {
	bz, err := obj.Marshal()
	if err != nil {
		panic(err)
	}
	return bz
}

// MustValidate panics if the object is not valid
func MustValidate(obj Validater) {
	if err := obj.Validate(); err != nil {
		panic(err)
	}
}
