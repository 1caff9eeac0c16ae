package datastores

import "context"

// ReplaceAt overwrites the registration found at index in s.LoadAll order.
func ReplaceAt(ctx context.Context, s RegistrationsStore, index int, r *Registration) error {
	id, err := idAt(ctx, s, index)
	if err != nil {
		return err
	}
	return s.Replace(ctx, id, r)
}

// RemoveAt removes the registration found at index in s.LoadAll order,
// shifting the following ones down by one.
func RemoveAt(ctx context.Context, s RegistrationsStore, index int) error {
	id, err := idAt(ctx, s, index)
	if err != nil {
		return err
	}
	return s.Remove(ctx, id)
}

func idAt(ctx context.Context, s RegistrationsStore, index int) (RegistrationID, error) {
	rs, err := s.LoadAll(ctx)
	if err != nil {
		return RegistrationID{}, err
	}
	if index < 0 || index >= len(rs) {
		return RegistrationID{}, ErrIndexOutOfRange
	}
	return rs[index].ID, nil
}
