package chain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// UnknownTokenProgramError is returned when a mint account is owned by a
// program that is not a recognized token program.
type UnknownTokenProgramError struct {
	Mint  string
	Owner solana.PublicKey
}

func (e *UnknownTokenProgramError) Error() string {
	return fmt.Sprintf("unknown token program %s for mint %s", e.Owner, e.Mint)
}

// ResolveTokenProgram classifies a mint account by its owning program.
// Only the SPL Token program and the Token-2022 program are recognized;
// a mint owned by anything else cannot be traded by this engine.
func ResolveTokenProgram(mintAccount *Account, mint string) (solana.PublicKey, error) {
	switch {
	case mintAccount.Owner.Equals(solana.TokenProgramID):
		return solana.TokenProgramID, nil
	case mintAccount.Owner.Equals(solana.Token2022ProgramID):
		return solana.Token2022ProgramID, nil
	default:
		return solana.PublicKey{}, &UnknownTokenProgramError{Mint: mint, Owner: mintAccount.Owner}
	}
}
