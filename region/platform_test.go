package region

import "errors"

// fakePlatform is a heap-backed platform seam that counts calls and can be
// told to fail, so tests can exercise construction failures and verify
// that no platform calls happen on the alloc/free hot path.
type fakePlatform struct {
	page       int
	failResrv  bool
	failCommit bool

	reserves int
	commits  int
	releases int
	released []byte
}

var errPlatform = errors.New("platform failure injected")

func (f *fakePlatform) Reserve(n int) ([]byte, error) {
	f.reserves++
	if f.failResrv {
		return nil, errPlatform
	}
	return make([]byte, n), nil
}

func (f *fakePlatform) Commit(mem []byte) error {
	f.commits++
	if f.failCommit {
		return errPlatform
	}
	return nil
}

func (f *fakePlatform) Release(mem []byte) error {
	f.releases++
	f.released = mem
	return nil
}

func (f *fakePlatform) PageSize() int {
	if f.page == 0 {
		return 4096
	}
	return f.page
}
