package anilist

const perPage = 25

const searchAnimeQuery = `
query ($search: String, $id: Int, $page: Int, $perpage: Int, $status: MediaStatus) {
  Page (page: $page, perPage: $perpage) {
    pageInfo {
      total
      currentPage
      lastPage
      hasNextPage
    }
    media (search: $search, type: ANIME, id: $id, status: $status) {
      id
      title {
        romaji
        english
      }
    }
  }
}`

const animeQuery = `
query ($id: Int) {
  Media (type: ANIME, id: $id) {
    id
    title {
      romaji
      english
    }
    startDate {
      year
      month
      day
    }
    endDate {
      year
      month
      day
    }
    coverImage {
      large
      color
    }
    bannerImage
    format
    status
    episodes
    duration
    season
    description
    averageScore
    genres
    nextAiringEpisode {
      airingAt
      timeUntilAiring
      episode
    }
    isAdult
    countryOfOrigin
    siteUrl
    trailer {
      id
      site
    }
  }
}`

const nextAiringQuery = `
query ($id: Int) {
  Media (type: ANIME, id: $id) {
    id
    title {
      romaji
      english
    }
    episodes
    nextAiringEpisode {
      airingAt
      timeUntilAiring
      episode
    }
  }
}`

const characterQuery = `
query ($id: Int) {
  Character (id: $id) {
    id
    name {
      full
      alternative
    }
    image {
      large
    }
    description (asHtml: false)
    dateOfBirth {
      year
      month
      day
    }
    gender
    age
    siteUrl
    media (sort: POPULARITY_DESC) {
      edges {
        node {
          title {
            romaji
            english
          }
          type
        }
      }
    }
  }
}`

const searchCharactersQuery = `
query ($name: String, $id: Int, $page: Int, $per_page: Int) {
  Page (page: $page, perPage: $per_page) {
    pageInfo {
      total
      currentPage
      lastPage
      hasNextPage
    }
    characters (search: $name, id: $id) {
      id
      name {
        full
      }
      gender
      media {
        edges {
          node {
            title {
              english
              romaji
            }
          }
        }
      }
    }
  }
}`
