package main

import (
	"fmt"
	"os"
	"strings"
)

// 标准输入/输出
const STDIO = "-"

// Path 输入数据的位置：文件路径、标准输入或MongoDB的{db}.{col}
type Path struct {
	File string
	DB   string
	Coll string
}

func NewPath(filePathOrColl string) (*Path, error) {
	filePathOrColl = strings.TrimSpace(filePathOrColl)
	if filePathOrColl == "" {
		return nil, nil
	}
	if filePathOrColl == STDIO {
		return &Path{File: STDIO}, nil
	}
	// 检查filePathOrColl是否作为文件存在
	if _, err := os.Stat(filePathOrColl); err == nil {
		return &Path{
			File: filePathOrColl,
		}, nil
	}
	splitted := strings.Split(filePathOrColl, ".")
	if len(splitted) != 2 || splitted[0] == "" || splitted[1] == "" {
		return nil, fmt.Errorf("%s is neither an existing file nor {db}.{col}", filePathOrColl)
	}
	return &Path{
		DB:   splitted[0],
		Coll: splitted[1],
	}, nil
}

func (p *Path) IsFile() bool {
	return p.File != ""
}

func (p *Path) GetDb() string {
	return p.DB
}

func (p *Path) GetColl() string {
	return p.Coll
}

func (p *Path) String() string {
	if p.IsFile() {
		return p.File
	}
	return p.DB + "." + p.Coll
}
