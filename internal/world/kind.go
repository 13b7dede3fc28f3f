package world

// Kind classifies an entity for collaborators and contact resolution.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPlayer
	KindGun
	KindEnemy
	KindBullet
	KindDecoration
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindGun:
		return "gun"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindDecoration:
		return "decoration"
	}
	return "unknown"
}

// Atlas indices of the built-in sprites.
const (
	SpritePlayer        = 0
	SpriteBullet        = 16
	SpriteGun           = 17
	SpriteDecorationMin = 24
	SpriteDecorationMax = 25
)
