package service

import (
	"fmt"
	"math/rand"
	"time"
)

// QuestionOracle 出题器。每次调用相互独立，返回题面、正确答案和
// 打乱顺序的选项（含正确答案）。
type QuestionOracle interface {
	Generate() (question string, answer string, options []string)
}

// 第一象限的精确三角函数值，其余象限按符号规则推导
var trigValuesQuadrant1 = map[string]map[int]string{
	"sin": {0: "0", 30: "1/2", 45: "sqrt(2)/2", 60: "sqrt(3)/2", 90: "1"},
	"cos": {0: "1", 30: "sqrt(3)/2", 45: "sqrt(2)/2", 60: "1/2", 90: "0"},
	"tg":  {0: "0", 30: "sqrt(3)/3", 45: "1", 60: "sqrt(3)", 90: "undefined"},
	"ctg": {0: "undefined", 30: "sqrt(3)", 45: "1", 60: "sqrt(3)/3", 90: "0"},
}

var quadrantAngles = map[int][]int{
	1: {0, 30, 45, 60, 90},
	2: {120, 135, 150, 180},
	3: {210, 225, 240, 270},
	4: {300, 315, 330, 360},
}

var radianLabels = map[int]string{
	0:   "0",
	30:  "pi/6",
	45:  "pi/4",
	60:  "pi/3",
	90:  "pi/2",
	120: "2pi/3",
	135: "3pi/4",
	150: "5pi/6",
	180: "pi",
	210: "7pi/6",
	225: "5pi/4",
	240: "4pi/3",
	270: "3pi/2",
	300: "5pi/3",
	315: "7pi/4",
	330: "11pi/6",
	360: "2pi",
}

var trigFunctions = []string{"sin", "cos", "tg", "ctg"}

const optionCount = 4

// TrigQuestionGenerator 随机三角函数求值题
type TrigQuestionGenerator struct {
	rng *rand.Rand
}

func NewTrigQuestionGenerator() *TrigQuestionGenerator {
	return &TrigQuestionGenerator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func NewTrigQuestionGeneratorWithSeed(seed int64) *TrigQuestionGenerator {
	return &TrigQuestionGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (g *TrigQuestionGenerator) Generate() (string, string, []string) {
	function := trigFunctions[g.rng.Intn(len(trigFunctions))]
	quadrant := g.rng.Intn(4) + 1
	angles := quadrantAngles[quadrant]
	angleDeg := angles[g.rng.Intn(len(angles))]

	answer := valueWithSign(function, angleDeg, quadrant)

	wrong := map[string]bool{}
	for len(wrong) < optionCount-1 {
		q := g.rng.Intn(4) + 1
		candidates := quadrantAngles[q]
		value := valueWithSign(function, candidates[g.rng.Intn(len(candidates))], q)
		if value != answer {
			wrong[value] = true
		}
	}

	options := make([]string, 0, optionCount)
	for value := range wrong {
		options = append(options, value)
	}
	options = append(options, answer)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	var angle string
	if g.rng.Intn(2) == 0 {
		angle = fmt.Sprintf("%d°", angleDeg)
	} else {
		angle = radianLabels[angleDeg]
	}

	return fmt.Sprintf("%s(%s)", function, angle), answer, options
}

// valueWithSign 先归约到第一象限的参考角，再按象限补符号
func valueWithSign(function string, angleDeg, quadrant int) string {
	var refAngle int
	switch quadrant {
	case 2:
		refAngle = 180 - angleDeg
	case 3:
		refAngle = angleDeg - 180
	case 4:
		refAngle = 360 - angleDeg
	default:
		refAngle = angleDeg
	}

	base := trigValuesQuadrant1[function][refAngle]
	if base == "undefined" || base == "0" {
		return base
	}

	negative := (function == "sin" && (quadrant == 3 || quadrant == 4)) ||
		(function == "cos" && (quadrant == 2 || quadrant == 3)) ||
		((function == "tg" || function == "ctg") && (quadrant == 2 || quadrant == 4))

	if negative {
		return "-" + base
	}
	return base
}
