package git

// Repository reads branches and committed files. Implementations never
// modify the repository.
type Repository interface {
	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// Head returns the branch HEAD points at.
	Head() (Branch, error)

	// Branches returns all local and remote tracking branches.
	Branches() ([]Branch, error)

	// ResolveBranch finds a branch by name. A local branch wins over a
	// remote tracking branch of the same name. Returns ErrNotFound when
	// neither exists.
	ResolveBranch(name string) (Branch, error)

	// ReadFile returns the committed content of path at the tip of branch.
	// Returns ErrNotFound when the branch or the file does not exist.
	ReadFile(branch, path string) ([]byte, error)

	// ReadFileAt returns the content of path at the given commit SHA.
	// Returns ErrNotFound when the file does not exist in that commit.
	ReadFileAt(sha, path string) ([]byte, error)
}
