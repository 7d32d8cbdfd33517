package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type TickMsg time.Time

// Player shows pre-rendered frames once, in order, and exits after the last
// one. It takes no input besides quitting.
type Player struct {
	title  string
	frames []string
	fps    int
	index  int
	done   bool
}

func NewPlayer(title string, frames []string, fps int) *Player {
	if fps <= 0 {
		fps = 20
	}
	return &Player{title: title, frames: frames, fps: fps}
}

func (p *Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p *Player) Init() tea.Cmd {
	if len(p.frames) == 0 {
		return tea.Quit
	}
	return p.tick()
}

func (p *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			p.done = true
			return p, tea.Quit
		}
	case TickMsg:
		if p.index >= len(p.frames)-1 {
			p.done = true
			return p, tea.Quit
		}
		p.index++
		return p, p.tick()
	}
	return p, nil
}

func (p *Player) View() string {
	if len(p.frames) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Title.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.frames[p.index])
	b.WriteString(Label.Render("step "))
	b.WriteString(Value.Render(fmt.Sprintf("%d/%d", p.index, len(p.frames)-1)))
	b.WriteString("  ")
	b.WriteString(ProgressBar(p.Progress(), 30))
	b.WriteString("  ")
	b.WriteString(KeyHint.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

func (p *Player) Index() int { return p.index }
func (p *Player) Done() bool { return p.done }

func (p *Player) Progress() float64 {
	if len(p.frames) <= 1 {
		return 1
	}
	return float64(p.index) / float64(len(p.frames)-1)
}

func Play(title string, frames []string, fps int) error {
	_, err := tea.NewProgram(NewPlayer(title, frames, fps), tea.WithAltScreen()).Run()
	return err
}
