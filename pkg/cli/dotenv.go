package cli

import "github.com/joho/godotenv"

// LoadDotEnv loads a .env file at path and sets its entries into the
// process environment. A missing file is reported as an error, like any
// other read failure; callers that treat .env as optional ignore it.
func LoadDotEnv(path string) error {
	return godotenv.Load(path)
}
