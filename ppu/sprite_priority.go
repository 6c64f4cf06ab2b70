package ppu

// spritePriority tracks, for one scanline, which sprite (by OAM index) owns
// each screen pixel, so overlapping sprites resolve priority without a sort:
// lower X wins; ties break by lower OAM index.
type spritePriority struct {
	owner  [FramebufferWidth]int
	ownerX [FramebufferWidth]int
}

func (s *spritePriority) clear() {
	for i := range s.owner {
		s.owner[i] = -1
		s.ownerX[i] = 0xFF
	}
}

func (s *spritePriority) tryClaim(pixelX, spriteIndex, spriteX int) bool {
	if pixelX < 0 || pixelX >= FramebufferWidth {
		return false
	}

	current := s.owner[pixelX]
	switch {
	case current == -1:
	case spriteX < s.ownerX[pixelX]:
	case spriteX == s.ownerX[pixelX] && spriteIndex < current:
	default:
		return false
	}

	s.owner[pixelX] = spriteIndex
	s.ownerX[pixelX] = spriteX
	return true
}

func (s *spritePriority) ownerOf(pixelX int) int {
	if pixelX < 0 || pixelX >= FramebufferWidth {
		return -1
	}
	return s.owner[pixelX]
}
