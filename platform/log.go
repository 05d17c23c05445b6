package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the application logger. It writes to stderr until InitAppLogger
// attaches a log file.
var Logger = newStderrLogger()

type Hook struct {
	writer   *os.File
	logPath  string
	fileName string
	fileDate string
}

func (hook *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *Hook) Fire(entry *logrus.Entry) error {
	timer := time.Now().Format("2006-01-02")
	line, _ := entry.String()
	//需要切换日志文件
	if hook.fileDate != timer {
		hook.fileDate = timer
		hook.writer.Close()
		err := os.MkdirAll(hook.logPath, os.ModePerm)
		if err != nil {
			return err
		}
		filename := fmt.Sprintf("%s/%s-%s.log", hook.logPath, hook.fileDate, hook.fileName)
		hook.writer, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			return err
		}
	}
	_, err := hook.writer.Write([]byte(line))
	return err
}

type LogFormatter struct {
}

func (m *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	b.WriteString(fmt.Sprintf("[%s] [%s] %s\n", timestamp, entry.Level, entry.Message))
	return b.Bytes(), nil
}

func openLogFile(logPath string, fileName string) (*os.File, string, error) {
	timer := time.Now().Format("2006-01-02")
	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s/%s-%s.log", logPath, timer, fileName)
	writer, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		return nil, "", err
	}
	return writer, timer, nil
}

// InitFile sends the standard logrus logger (used by gin's request log) to a
// daily file under logPath.
func InitFile(logPath string, fileName string) {
	logrus.SetFormatter(&LogFormatter{})
	writer, timer, err := openLogFile(logPath, fileName)
	if err != nil {
		logrus.Error(err)
		return
	}
	logrus.AddHook(&Hook{
		writer:   writer,
		logPath:  logPath,
		fileName: fileName,
		fileDate: timer,
	})
}

// InitAppLogger points Logger at stderr plus a log file under logPath.
func InitAppLogger(logPath string, fileName string, level logrus.Level) *logrus.Logger {
	Logger.SetLevel(level)
	logFile, _, err := openLogFile(logPath, fileName)
	if err != nil {
		Logger.Errorf("failed to open log file, logging to stderr only: %s", err)
		return Logger
	}
	Logger.SetOutput(io.MultiWriter(logFile, os.Stderr))
	return Logger
}

func newStderrLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&LogFormatter{})
	logger.SetOutput(os.Stderr)
	return logger
}
