package classicmatch

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// generateCode draws a left-zero-padded decimal code of the given length
// from crypto/rand. The code space matches the original flows (10^digits);
// only the randomness source is upgraded.
func generateCode(digits int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}

func codeConfigFor(cfg Config, purpose CodePurpose) CodeConfig {
	if purpose == PurposeReset {
		return cfg.Reset
	}
	return cfg.Confirmation
}
