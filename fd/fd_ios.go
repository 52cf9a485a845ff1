//go:build ios

package fd

func count() (int, error) {
	return 0, ErrUnsupported
}
