package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectory_UserIds_StrictlyIncreasing(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	// When twelve distinct users are created
	for i := 1; i <= 12; i++ {
		user := directory.NewUser(fmt.Sprintf("user-%d", i))

		// Then ids increase by one, starting at 1
		req.Equal(i, user.ID)
	}
}

func TestDirectory_Colors_CycleThroughPalette(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	// When more users than palette entries are created
	for i := 0; i < 2*len(DefaultPalette); i++ {
		user := directory.NewUser(fmt.Sprintf("user-%d", i))

		// Then colors cycle through exactly the five fixed values
		req.Equal(DefaultPalette[i%len(DefaultPalette)], user.Color)
	}
}

func TestDirectory_MessageIds_StartAtOne(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	req.Equal(1, directory.NextMessageID())
	req.Equal(2, directory.NextMessageID())
	req.Equal(3, directory.NextMessageID())
}

func TestDirectory_MessageAndUserSequences_AreIndependent(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	// Given a few messages already allocated
	directory.NextMessageID()
	directory.NextMessageID()

	// When the first user is created
	user := directory.NewUser("alice")

	// Then the user sequence still starts at 1
	req.Equal(1, user.ID)
	req.Equal(3, directory.NextMessageID())
}
