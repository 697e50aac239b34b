package question

type Difficulty string

const (
	Foundational Difficulty = "foundational"
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
	Expert       Difficulty = "expert"
)

var AllDifficulties = []Difficulty{
	Foundational,
	Beginner,
	Intermediate,
	Advanced,
	Expert,
}

func (d Difficulty) IsValid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}
