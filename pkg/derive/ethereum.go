package derive

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
)

// EthereumKeypair treats the candidate as raw secp256k1 private key
// material and derives the externally-owned account address it
// controls. Candidates that fall outside the curve order (or are zero)
// are rejected with an error and skipped by the engine.
type EthereumKeypair struct{}

func (EthereumKeypair) Derive(candidate []byte) ([]byte, error) {
	key, err := crypto.ToECDSA(candidate)
	if err != nil {
		return nil, err
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)
	return addr.Bytes(), nil
}

// EthereumPrivateKeyHex renders the winning candidate the way wallets
// import it.
func EthereumPrivateKeyHex(candidate []byte) string {
	return "0x" + hex.EncodeToString(candidate)
}
