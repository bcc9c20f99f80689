//go:build !windows

package clipboard

func CopyText(s string) error {
	if _, err := textPayload(s); err != nil {
		return err
	}
	return ErrUnsupported
}
