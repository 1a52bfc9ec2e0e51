package game

// Key 游戏关心的按键
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseKey 将浏览器 KeyboardEvent.key 风格的标识映射为 Key
// 同时接受旧式 "Left"/"Right" 与 "ArrowLeft"/"ArrowRight"
func ParseKey(s string) Key {
	switch s {
	case "Left", "ArrowLeft":
		return KeyLeft
	case "Right", "ArrowRight":
		return KeyRight
	default:
		return KeyUnknown
	}
}

// Input 两个独立的方向标志，按下置位、松开清除
type Input struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Press 按下；未知按键返回 false
func (in *Input) Press(k Key) bool {
	return in.set(k, true)
}

// Release 松开；未知按键返回 false
func (in *Input) Release(k Key) bool {
	return in.set(k, false)
}

func (in *Input) set(k Key, v bool) bool {
	switch k {
	case KeyLeft:
		in.Left = v
	case KeyRight:
		in.Right = v
	default:
		return false
	}
	return true
}
