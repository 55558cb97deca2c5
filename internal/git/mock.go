package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	WorkingDirectoryFunc func() string
	HeadFunc             func() (Branch, error)
	BranchesFunc         func() ([]Branch, error)
	ResolveBranchFunc    func(string) (Branch, error)
	ReadFileFunc         func(string, string) ([]byte, error)
	ReadFileAtFunc       func(string, string) ([]byte, error)
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) Branches() ([]Branch, error) {
	if m.BranchesFunc != nil {
		return m.BranchesFunc()
	}
	return nil, nil
}

func (m *MockRepository) ResolveBranch(name string) (Branch, error) {
	if m.ResolveBranchFunc != nil {
		return m.ResolveBranchFunc(name)
	}
	return Branch{}, ErrNotFound
}

func (m *MockRepository) ReadFile(branch, path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(branch, path)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) ReadFileAt(sha, path string) ([]byte, error) {
	if m.ReadFileAtFunc != nil {
		return m.ReadFileAtFunc(sha, path)
	}
	return nil, ErrNotFound
}
