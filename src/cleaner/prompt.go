package cleaner

import (
	"bufio"
	"datagets/src/utils"
	"fmt"
	"io"
	"strings"
)

// 可接受的回答，大小写按字面区分
var (
	yesAnswers  = []string{"Y", "y", "yes", "Yes", ""}
	noAnswers   = []string{"N", "n", "no", "No"}
	quitAnswers = []string{"q", "Q", "quit", "Quit"}
)

// maxAnswerSize 单行回答的最大字节数
const maxAnswerSize = 1 << 20

type answer int

const (
	answerYes answer = iota
	answerNo
	answerQuit
)

// prompter 逐行读取用户输入并输出提示
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxAnswerSize)
	return &prompter{in: sc, out: out}
}

func (p *prompter) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// readLine 打印问题并读取一行，去掉行尾的 \r
func (p *prompter) readLine(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// retry 读取-校验-重试：validate 返回非空提示时打印并重新提问，没有次数上限
func (p *prompter) retry(question string, validate func(string) string) (string, error) {
	for {
		line, err := p.readLine(question)
		if err != nil {
			return "", err
		}
		if msg := validate(line); msg != "" {
			p.println(msg)
			continue
		}
		return line, nil
	}
}

// choose 询问 yes/no(/quit)，空回答视为 yes
func (p *prompter) choose(question string, allowQuit bool) (answer, error) {
	line, err := p.retry(question, func(s string) string {
		if utils.Contains(yesAnswers, s) || utils.Contains(noAnswers, s) ||
			(allowQuit && utils.Contains(quitAnswers, s)) {
			return ""
		}
		return fmt.Sprintf("Invalid input:  %s", s)
	})
	if err != nil {
		return answerNo, err
	}

	switch {
	case utils.Contains(yesAnswers, line):
		return answerYes, nil
	case utils.Contains(noAnswers, line):
		return answerNo, nil
	default:
		return answerQuit, nil
	}
}

// confirm 询问 [Y/n]
func (p *prompter) confirm() (bool, error) {
	a, err := p.choose("Is this correct? [Y/n]  ", false)
	return a == answerYes, err
}
