package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserPool_Parse(t *testing.T) {
	pool := NewParserPool()

	tree, err := pool.Parse([]byte("<?php\nfunction run() {}\n"))
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
	assert.Equal(t, "program", tree.RootNode().Kind())
	assert.Equal(t, 0, pool.Leased(), "parser is returned after Parse")
}

func TestParserPool_LeaseAccounting(t *testing.T) {
	pool := NewParserPool()

	sp := pool.get()
	require.NotNil(t, sp)
	assert.Equal(t, 1, pool.Leased())

	pool.put(sp)
	assert.Equal(t, 0, pool.Leased())

	pool.put(nil)
	assert.Equal(t, 0, pool.Leased())
}

func TestParserPool_ConcurrentParse(t *testing.T) {
	pool := NewParserPool()
	src := []byte("<?php\nnamespace App;\nfunction run() {}\n")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				tree, err := pool.Parse(src)
				if err != nil {
					t.Errorf("parse: %v", err)
					return
				}
				tree.Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, pool.Leased())
}
