//go:generate go run go.uber.org/mock/mockgen -source=secret.go -destination=../../mocks/mock_secret.go -package=mocks
package port

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, encoded string) (bool, error)
}
